package scanner

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ZXingDecoder reads the retail 1D symbologies: EAN-13, EAN-8, UPC-A, UPC-E and Code 128.
type ZXingDecoder struct {
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

func NewZXingDecoder() *ZXingDecoder {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	return &ZXingDecoder{
		readers: []gozxing.Reader{
			oned.NewMultiFormatUPCEANReader(hints),
			oned.NewCode128Reader(),
		},
		hints: hints,
	}
}

func (d *ZXingDecoder) Decode(frame image.Image) (string, error) {
	bitmap, err := gozxing.NewBinaryBitmapFromImage(frame)
	if err != nil {
		return "", fmt.Errorf("error preparing frame: %w", err)
	}

	for _, reader := range d.readers {
		result, err := reader.Decode(bitmap, d.hints)
		if err == nil {
			return result.GetText(), nil
		}
		if !isFrameMiss(err) {
			return "", fmt.Errorf("error decoding frame: %w", err)
		}
	}

	return "", ErrNotFound
}

// isFrameMiss reports the outcomes that only mean this frame held no readable symbol.
func isFrameMiss(err error) bool {
	var notFound gozxing.NotFoundException
	var checksum gozxing.ChecksumException
	var format gozxing.FormatException
	return errors.As(err, &notFound) || errors.As(err, &checksum) || errors.As(err, &format)
}
