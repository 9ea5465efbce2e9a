package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.Printf("plain %d", 1)
	p.Successf("saved %s", "todo")
	p.Infof("info")
	p.Warnf("careful")
	p.Errorf("broken")

	out := buf.String()
	assert.Contains(t, out, "plain 1\n")
	assert.Contains(t, out, "saved todo")
	assert.Contains(t, out, "info")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "broken")
}

func TestPrinter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Printf("plain")
	p.Successf("saved")
	p.Infof("info")
	p.Warnf("careful")
	assert.Empty(t, buf.String())

	p.Errorf("broken")
	assert.Contains(t, buf.String(), "broken")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
