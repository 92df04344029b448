package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmDialogShowsLightAndKeys(t *testing.T) {
	out := ConfirmDialog("Delete Light", "Delete light 'Key.000'?")
	clean := SanitizeText(out)

	assert.Contains(t, clean, "Delete Light")
	assert.Contains(t, clean, "Delete light 'Key.000'?")
	assert.Contains(t, clean, "y: confirm | n: cancel")
}
