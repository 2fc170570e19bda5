package service

import (
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/booth-market/internal/model"
)

type PassGenerator interface {
	Generate(res model.Reservation) ([]byte, error)
}

// QRPassGenerator encodes a reservation as a Size x Size PNG QR code.
type QRPassGenerator struct {
	Size int
}

// PassContent is the text scanned at the booth.
func PassContent(res model.Reservation) string {
	return fmt.Sprintf("reservation=%d;vendor=%d;booth=%d;from=%s;to=%s",
		res.ID, res.VendorID, res.BoothID,
		res.Date.UTC().Format(time.RFC3339), res.End().UTC().Format(time.RFC3339))
}

func (g QRPassGenerator) Generate(res model.Reservation) ([]byte, error) {
	return qrcode.Encode(PassContent(res), qrcode.Medium, g.Size)
}
