package employeeapp

import "net/http"

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
	}
}
