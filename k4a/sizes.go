package k4a

// ImageSize is a pixel width/height pair.
type ImageSize struct {
	Width  int
	Height int
}

// Nominal image sizes for the standard device modes. OFF modes have no
// size and are absent on purpose.
var (
	colorResolutionSizes = map[string]ImageSize{
		"RES_720P":  {1280, 720},
		"RES_1080P": {1920, 1080},
		"RES_1440P": {2560, 1440},
		"RES_1536P": {2048, 1536},
		"RES_2160P": {3840, 2160},
		"RES_3072P": {4096, 3072},
	}

	depthModeSizes = map[string]ImageSize{
		"NFOV_UNBINNED":  {640, 576},
		"NFOV_2X2BINNED": {320, 288},
		"WFOV_UNBINNED":  {1024, 1024},
		"WFOV_2X2BINNED": {512, 512},
		"PASSIVE_IR":     {1024, 1024},
	}
)

// NominalColorSize returns the image size a standard color resolution
// mode produces.
func NominalColorSize(resolution string) (ImageSize, bool) {
	s, ok := colorResolutionSizes[resolution]
	return s, ok
}

// NominalDepthSize returns the image size a standard depth mode
// produces.
func NominalDepthSize(mode string) (ImageSize, bool) {
	s, ok := depthModeSizes[mode]
	return s, ok
}
