package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	assert.Equal(t, "insulina-r-pida-100ui", FromName("  Insulina Rápida 100UI ", "x"))
	assert.Equal(t, "x", FromName("***", "x"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "foto-visita.jpg", FileName("Foto Visita.JPG"))
	assert.Equal(t, "file", FileName(".."))
	assert.Equal(t, "report", FileName("../../report"))
}
