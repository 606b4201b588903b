package ghog

// the stake pool keeps everything below 0x40
var (
	tagPoolStartTime  = byte(0x40)
	tagSharePerSecond = byte(0x41)
)
