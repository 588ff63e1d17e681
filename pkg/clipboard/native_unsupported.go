//go:build !(linux || darwin || windows) || arm || 386 || ios || android

package clipboard

func nativeReadText() ([]byte, error) {
	return nil, ErrUnsupported
}

func nativeReadImage() ([]byte, error) {
	return nil, ErrUnsupported
}
