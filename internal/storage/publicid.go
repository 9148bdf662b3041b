// AngelaMos | 2026
// publicid.go

package storage

import "strings"

// ExtractPublicID recovers the CDN public id from a delivery URL.
// Everything past the version segment (index 7 of the split URL) is the
// folder path; the filename loses its extension.
//
//	https://res.cloudinary.com/demo/image/upload/v1/products/shoe.jpg
//	  -> products/shoe
func ExtractPublicID(url string) string {
	parts := strings.Split(url, "/")

	filenameWithExt := ""
	if len(parts) > 0 {
		filenameWithExt = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	folder := ""
	if len(parts) > 7 {
		folder = strings.Join(parts[7:], "/")
	}

	filename := strings.SplitN(filenameWithExt, ".", 2)[0]

	if folder != "" {
		return folder + "/" + filename
	}
	return filename
}
