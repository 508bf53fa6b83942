package locator

import (
	"strings"

	"locator-inspector/internal/entity"
)

// RateSelector gives an advisory robustness rating for a CSS selector.
func RateSelector(sel string) entity.Quality {
	switch {
	case strings.HasPrefix(sel, "#") && !strings.Contains(sel, " > "):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "ID"}
	case strings.Contains(sel, "[placeholder="):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "Placeholder"}
	case hasTestIDAttr(sel, "["):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "Test ID"}
	case strings.Contains(sel, "[name="):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Name"}
	case strings.HasPrefix(sel, ".") && !strings.Contains(sel, " > "):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Unique Class"}
	case strings.Contains(sel, ":nth-child"):
		return entity.Quality{Rating: entity.RatingPoor, Reason: "Position-based"}
	case strings.Contains(sel, " > "):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Hierarchical"}
	case strings.Contains(sel, "[type="):
		return entity.Quality{Rating: entity.RatingFair, Reason: "Type Attribute"}
	case !strings.ContainsAny(sel, "[.#:"):
		return entity.Quality{Rating: entity.RatingPoor, Reason: "Tag only"}
	}

	return entity.Quality{Rating: entity.RatingFair, Reason: "Attribute-based"}
}

// RatePath gives an advisory robustness rating for a path expression.
func RatePath(expr string) entity.Quality {
	switch {
	case strings.Contains(expr, "[@placeholder="):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "Placeholder"}
	case strings.Contains(expr, "[@id="):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "ID"}
	case hasTestIDAttr(expr, "[@"):
		return entity.Quality{Rating: entity.RatingExcellent, Reason: "Test ID"}
	case strings.Contains(expr, "[@name="):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Name"}
	case strings.Contains(expr, "[text()="):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Text Content"}
	case strings.Contains(expr, "contains(text()"):
		return entity.Quality{Rating: entity.RatingFair, Reason: "Text Contains"}
	case strings.Contains(expr, "[@"):
		return entity.Quality{Rating: entity.RatingGood, Reason: "Attribute-based"}
	}

	return entity.Quality{Rating: entity.RatingPoor, Reason: "Position-based"}
}

func hasTestIDAttr(expr, open string) bool {
	for _, attr := range testIDAttributes {
		if strings.Contains(expr, open+attr+"=") {
			return true
		}
	}

	return false
}
