//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// xImageToRGBA converts a ZPixmap reply in the server's little-endian
// TrueColor layout. 24 and 32 bpp are read as BGR(X); 16 bpp as RGB565.
// The X alpha byte is padding on most visuals, so the result is opaque.
func xImageToRGBA(formats []xproto.Format, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errEmptyGeometry
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("window pixels: empty image data")
	}

	bpp := 0
	for _, f := range formats {
		if f.Depth == reply.Depth {
			bpp = int(f.BitsPerPixel)
			break
		}
	}
	if bpp != 16 && bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported pixel format: depth %d, %d bpp", reply.Depth, bpp)
	}
	step := bpp / 8

	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*step {
		return nil, fmt.Errorf("window pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			src := row[x*step:]
			d := dst[x*4 : x*4+4]
			if step == 2 {
				v := uint16(src[0]) | uint16(src[1])<<8
				r, g, b := v>>11&0x1f, v>>5&0x3f, v&0x1f
				d[0] = uint8(r<<3 | r>>2)
				d[1] = uint8(g<<2 | g>>4)
				d[2] = uint8(b<<3 | b>>2)
			} else {
				d[0], d[1], d[2] = src[2], src[1], src[0]
			}
			d[3] = 0xff
		}
	}
	return img, nil
}
