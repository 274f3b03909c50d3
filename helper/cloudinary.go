package helper

import (
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary is the shared client for signed recording uploads, nil when
// credentials are not configured.
var Cloudinary *cloudinary.Cloudinary

func InitCloudinary() *cloudinary.Cloudinary {
	name := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if name == "" {
		return nil
	}
	cld, err := cloudinary.NewFromParams(
		name,
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Printf("Cloudinary init failed: %v", err)
		return nil
	}
	Cloudinary = cld
	return cld
}
