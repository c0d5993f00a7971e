package labels_test

import (
	"testing"

	"github.com/raysh454/labelboard/internal/labels"
)

func TestNodeTarget_Mutations(t *testing.T) {
	t.Parallel()
	target := labels.NewNodeTarget("recordLabelData")

	target.SetText("loading <now>")
	if got := target.HTML(); got != "loading &lt;now&gt;" {
		t.Errorf("unexpected HTML %q", got)
	}

	target.Append(labels.BuildTable(nil))
	if got := target.OuterHTML(); got != `<div id="recordLabelData">loading &lt;now&gt;<table></table></div>` {
		t.Errorf("unexpected outer HTML %q", got)
	}

	target.Clear()
	if got := target.HTML(); got != "" {
		t.Errorf("expected empty target, got %q", got)
	}
	if got := target.Text(); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestNodeTarget_SetTextReplacesChildren(t *testing.T) {
	t.Parallel()
	target := labels.NewNodeTarget("")
	target.Append(labels.BuildTable(nil))
	target.SetText("x")
	if got := target.HTML(); got != "x" {
		t.Errorf("expected only text, got %q", got)
	}
}
