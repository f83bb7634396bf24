package hotkey

// ID returns the identity of h: the MurmurHash3 32-bit finalizer applied to
// the modifier bits and the code ordinal packed into one word. The finalizer
// is a bijection on uint32, so distinct HotKeys never share an id. The
// function is pinned; ids can be persisted across runs and releases.
func (h HotKey) ID() uint32 {
	return fmix32(uint32(h.mods)<<16 | uint32(h.code))
}

func fmix32(k uint32) uint32 {
	k ^= k >> 16
	k *= 0x85ebca6b
	k ^= k >> 13
	k *= 0xc2b2ae35
	k ^= k >> 16
	return k
}
