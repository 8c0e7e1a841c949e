package fr202

// EncodeCommand builds the read request for ch. Bytes 2 and 3 are filler
// that clock the response out of the device.
func EncodeCommand(ch Channel) ([FrameSize]byte, error) {
	var frame [FrameSize]byte
	if err := ch.Validate(); err != nil {
		return frame, err
	}

	// bit7 start, bit5 single-ended, bits4-3 = 0, bits3-0 = address
	frame[0] = CmdStart | CmdSingleEnded | (ch.Byte() & CmdAddrMask)
	// byte 1 carries the reserved mode bits (4 and 3), both 0

	return frame, nil
}
