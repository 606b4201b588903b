package genesis

// schedule data, the stake pool keeps everything below 0x40
var (
	tagStartTime          = byte(0x40)
	tagDuration           = byte(0x41)
	tagTotalRewards       = byte(0x42)
	tagRejectBeforeStart  = byte(0x43)
	tagRecoverGracePeriod = byte(0x44)
)
