package handlers

import (
	"fmt"
	"net/url"
)

// Link is a single hypermedia reference
type Link struct {
	Href string `json:"href"`
}

// Links maps relation names to references, rendered as the _links object
type Links map[string]Link

// collectionLinks builds the navigation links of a paged collection. The
// self link is always present; first and prev appear only past the first
// page, next and last only before the final one. Every link reproduces the
// request's size, sort and filter parameters.
func collectionLinks(path string, pageNum, size, totalPages int, sort string, filters url.Values) Links {
	pageURL := func(page int) string {
		values := url.Values{}
		values.Set("page", fmt.Sprintf("%d", page))
		values.Set("size", fmt.Sprintf("%d", size))
		values.Set("sort", sort)
		for key, vals := range filters {
			for _, v := range vals {
				values.Add(key, v)
			}
		}
		return path + "?" + values.Encode()
	}

	links := Links{
		"self": {Href: pageURL(pageNum)},
	}

	if pageNum > 1 {
		links["first"] = Link{Href: pageURL(1)}
		links["prev"] = Link{Href: pageURL(pageNum - 1)}
	}

	if pageNum < totalPages {
		links["next"] = Link{Href: pageURL(pageNum + 1)}
		links["last"] = Link{Href: pageURL(totalPages)}
	}

	return links
}

// weatherLinks cross-references the weather representations of one location.
// self names the relation of the endpoint that produced the document; the
// remaining representations are linked under their own names.
func weatherLinks(self string, code string) Links {
	byCode := map[string]string{
		"realtime_weather": "/v1/realtime/" + code,
		"hourly_forecast":  "/v1/hourly/" + code,
		"daily_forecast":   "/v1/daily/" + code,
		"full_forecast":    "/v1/full/" + code,
	}

	links := Links{
		"self": {Href: byCode[self]},
	}
	for rel, href := range byCode {
		if rel == self {
			continue
		}
		links[rel] = Link{Href: href}
	}

	return links
}

// locationLinks is the link set of a single managed location
func locationLinks(code string) Links {
	return Links{
		"self": {Href: "/v1/locations/" + code},
	}
}
