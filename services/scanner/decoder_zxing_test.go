package scanner

import (
	"image"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZXingDecoder(t *testing.T) {

	t.Run("Decodes code128 label", func(t *testing.T) {
		// setup
		sut := NewZXingDecoder()

		// given
		label, err := oned.NewCode128Writer().Encode("899900112233", gozxing.BarcodeFormat_CODE_128, 400, 120, nil)
		require.NoError(t, err)

		// when
		barcode, err := sut.Decode(label)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "899900112233", barcode)
	})

	t.Run("Decodes ean13 label", func(t *testing.T) {
		// setup
		sut := NewZXingDecoder()

		// given
		label, err := oned.NewEAN13Writer().Encode("5901234123457", gozxing.BarcodeFormat_EAN_13, 400, 120, nil)
		require.NoError(t, err)

		// when
		barcode, err := sut.Decode(label)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "5901234123457", barcode)
	})

	t.Run("Blank frame is a miss", func(t *testing.T) {
		// setup
		sut := NewZXingDecoder()

		// when
		_, err := sut.Decode(image.NewGray(image.Rect(0, 0, 320, 240)))

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
