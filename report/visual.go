package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/orisano/pixelmatch"
)

// DefaultThreshold is the per pixel color distance threshold, between 0 and
// 1, used by Compare.
const DefaultThreshold = 0.1

// Compare compares a screenshot against a baseline image file and returns the
// number of differing pixels. Images of different sizes are an error.
func Compare(screenshot []byte, baseline string, threshold float64) (int, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	got, _, err := image.Decode(bytes.NewReader(screenshot))
	if err != nil {
		return 0, fmt.Errorf("could not decode screenshot: %w", err)
	}
	buf, err := os.ReadFile(baseline)
	if err != nil {
		return 0, err
	}
	want, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return 0, fmt.Errorf("could not decode baseline %s: %w", baseline, err)
	}
	if got.Bounds().Size() != want.Bounds().Size() {
		return 0, fmt.Errorf("screenshot is %v, baseline %s is %v", got.Bounds().Size(), baseline, want.Bounds().Size())
	}
	n, err := pixelmatch.MatchPixel(got, want, pixelmatch.Threshold(threshold))
	if err != nil {
		return 0, fmt.Errorf("could not compare with baseline %s: %w", baseline, err)
	}
	return n, nil
}
