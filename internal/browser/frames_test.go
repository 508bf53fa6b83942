package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"locator-inspector/internal/entity"
)

func TestFrameFromHost(t *testing.T) {
	tests := []struct {
		name      string
		info      map[string]interface{}
		frameName string
		want      entity.ContextFrame
	}{
		{
			name: "named iframe",
			info: map[string]interface{}{"tag": "iframe", "name": "checkout", "id": "pay", "index": 1, "siblings": 2},
			want: entity.ContextFrame{Kind: entity.FrameKindFrame, Name: "checkout", Selector: `iframe[name="checkout"]`},
		},
		{
			name:      "id only",
			info:      map[string]interface{}{"tag": "iframe", "id": "ads", "index": float64(2), "siblings": float64(2)},
			frameName: "",
			want:      entity.ContextFrame{Kind: entity.FrameKindFrame, Name: "ads", Selector: "#ads"},
		},
		{
			name:      "anonymous sibling",
			info:      map[string]interface{}{"tag": "iframe", "index": 2, "siblings": 3},
			frameName: "",
			want:      entity.ContextFrame{Kind: entity.FrameKindFrame, Name: "iframe-frame-2", Selector: "iframe:nth-of-type(2)"},
		},
		{
			name:      "runtime frame name",
			info:      map[string]interface{}{"tag": "frame", "index": 1, "siblings": 1},
			frameName: "main",
			want:      entity.ContextFrame{Kind: entity.FrameKindFrame, Name: "main", Selector: "frame"},
		},
		{
			name: "missing info",
			info: nil,
			want: entity.ContextFrame{Kind: entity.FrameKindFrame, Name: "iframe-frame-1", Selector: "iframe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, frameFromHost(tt.info, tt.frameName))
		})
	}
}

func TestGetFloat(t *testing.T) {
	assert.Equal(t, 3.0, getFloat(3))
	assert.Equal(t, 2.5, getFloat(2.5))
	assert.Equal(t, 7.0, getFloat(int64(7)))
	assert.Zero(t, getFloat("x"))
	assert.Zero(t, getFloat(nil))
}

func TestLiveScope_NilFrameCountsZero(t *testing.T) {
	scope := newLiveScope(nil, nil)

	assert.Zero(t, scope.Count("div"))
	assert.Zero(t, scope.CountPath("//div"))
}
