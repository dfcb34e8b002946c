package testutil

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificateDimensions(t *testing.T) {
	img := RenderCertificate(DefaultCertImageConfig(Lines(IELTSRawText)))
	require.NotNil(t, img)
	assert.Equal(t, MediumResSize.Width, img.Bounds().Dx())
	assert.Equal(t, MediumResSize.Height, img.Bounds().Dy())
}

func TestCertificatePNGDecodes(t *testing.T) {
	data := CertificatePNG(t, Lines(TOEICRawText), LowResSize)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, LowResSize.Width, img.Bounds().Dx())
}

func TestBlankPNGIsAllWhite(t *testing.T) {
	data := BlankPNG(t, ImageSize{32, 32})
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	r, g, b, _ := img.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestLines(t *testing.T) {
	lines := Lines(IELTSRawText)
	require.NotEmpty(t, lines)
	assert.Equal(t, "INTERNATIONAL ENGLISH LANGUAGE TESTING SYSTEM", lines[0])
}
