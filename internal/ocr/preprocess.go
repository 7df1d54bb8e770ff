package ocr

import (
	"image"

	"gocv.io/x/gocv"
)

// preprocessForOCR prepares a card photo for Tesseract: upscale small
// images, normalize contrast, binarize, and fix polarity.
func preprocessForOCR(src gocv.Mat) gocv.Mat {
	h, w := src.Rows(), src.Cols()

	// Upscale small crops; Tesseract wants roughly 300px of card height
	var scaled gocv.Mat
	minDim := min(h, w)
	if minDim < 300 {
		scale := 300.0 / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(src, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = src.Clone()
	}

	// Convert to grayscale
	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	// CLAHE evens out the uneven lighting of phone photos
	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{8, 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	// Otsu's threshold for clean text/background separation
	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// Cards with dark frames come out as light text on dark; Tesseract
	// expects dark text on light background
	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if totalPixels > 0 && float64(whiteCount)/float64(totalPixels) > 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	// Back to BGR for Tesseract (it handles the format internally)
	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
