//go:build (linux || darwin || windows) && !arm && !386 && !ios && !android

package clipboard

import "github.com/aymanbagabas/go-nativeclipboard"

func nativeReadText() ([]byte, error) {
	return nativeclipboard.Text.Read()
}

func nativeReadImage() ([]byte, error) {
	return nativeclipboard.Image.Read()
}
