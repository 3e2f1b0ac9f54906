package capture

import (
	"context"
	"fmt"

	"imagelab/internal/opencv/conversion"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// warmupFrames are discarded while the sensor settles its exposure.
const warmupFrames = 5

// Capture grabs a single RGB frame from the camera with the given device index.
func Capture(ctx context.Context, device int) (*safe.Mat, error) {
	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	defer webcam.Close()

	if !webcam.IsOpened() {
		return nil, fmt.Errorf("camera %d is not available", device)
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for i := 0; i <= warmupFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if ok := webcam.Read(&frame); !ok {
			return nil, fmt.Errorf("failed to read frame from camera %d", device)
		}
	}

	if frame.Empty() {
		return nil, fmt.Errorf("camera %d returned an empty frame", device)
	}

	bgr, err := safe.NewMatFromMat(frame)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	return conversion.BGRToRGB(bgr)
}
