package database

import "net/url"

// ConstructDatabaseURL resolves the connection URL for a named database.
// When databaseName is empty the base URL already names the database and is
// returned untouched. Otherwise the database name becomes the URL path, and
// sslmode=disable is added unless the base URL already sets an sslmode.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u.Path = "/" + databaseName

	query := u.Query()
	if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}
	u.RawQuery = query.Encode()

	return u.String()
}
