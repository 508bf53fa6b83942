package browser

// countSelectorScript counts CSS matches in the frame's document; a selector
// the engine rejects counts as zero.
const countSelectorScript = `(selector) => {
	try {
		return document.querySelectorAll(selector).length;
	} catch (e) {
		return 0;
	}
}`

const countPathScript = `(expr) => {
	try {
		return document.evaluate(expr, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength;
	} catch (e) {
		return 0;
	}
}`

// frameHostScript describes an iframe element so it can be selected from its parent document.
const frameHostScript = `(el) => {
	const tag = el.tagName.toLowerCase();
	const same = el.parentElement
		? Array.from(el.parentElement.children).filter((c) => c.tagName === el.tagName)
		: [el];

	return {
		tag: tag,
		name: el.getAttribute('name') || '',
		id: el.id || '',
		title: el.getAttribute('title') || '',
		index: same.indexOf(el) + 1,
		siblings: same.length,
	};
}`
