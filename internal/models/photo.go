package models

// GalleryPhoto is stored in the "gallery" collection. createdAt is set
// server-side at creation and never mutated; the only updatable field is
// the likes counter.
type GalleryPhoto struct {
	PhotoID   string `json:"photoId"`
	ImageURL  string `json:"imageUrl"`
	ObjectKey string `json:"objectKey"`
	UserID    string `json:"userId"`
	EventID   string `json:"eventId"`
	Likes     int    `json:"likes"`
	CreatedAt string `json:"createdAt"`
}

type UploadPhotoResponse struct {
	PhotoID  string `json:"photoId"`
	ImageURL string `json:"imageUrl"`
}
