package ports

// PosterGenerator genera el afiche PDF con el código QR del menú público.
type PosterGenerator interface {
	GenerateQRPoster(restaurantName, menuURL string) ([]byte, error)
}
