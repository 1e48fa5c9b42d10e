package xlsx

const (
	// qrCodeValueType marks a payload value rendered as a qr code image.
	qrCodeValueType = "qrcode"

	// defaultQRCodeSize is the image side in pixels when the value
	// descriptor carries no size.
	defaultQRCodeSize = 128
)
