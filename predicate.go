package cuco

// sentinels bundles the reserved slot/key values a container is
// constructed with. erasedKeySet is false when the container was
// built without erase support, in which case every slot is either
// empty or filled and casErase is never called.
type sentinels struct {
	emptyKeyBits  uint64
	erasedKeyBits uint64
	erasedKeySet  bool
}

// isEmpty classifies a loaded slot snapshot.
func (s sentinels) isEmpty(keyBits uint64) bool {
	return keyBits == s.emptyKeyBits
}

// isErased classifies a loaded slot snapshot.
func (s sentinels) isErased(keyBits uint64) bool {
	return s.erasedKeySet && keyBits == s.erasedKeyBits
}

// isFilled is the complement of empty and erased.
func (s sentinels) isFilled(keyBits uint64) bool {
	return !s.isEmpty(keyBits) && !s.isErased(keyBits)
}

// isReusable is true for slots an insert may claim: empty or erased.
func (s sentinels) isReusable(keyBits uint64) bool {
	return s.isEmpty(keyBits) || s.isErased(keyBits)
}
