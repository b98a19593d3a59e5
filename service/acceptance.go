package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

var acceptancePonds = []JSON{
	{"id": "p1", "name": "North A", "status": "Stocked", "cluster": JSON{"name": "North"}, "active": true, "size": 100},
	{"id": "p2", "name": "North B", "status": "Empty", "cluster": JSON{"name": "North"}, "active": false, "size": 250},
	{"id": "p3", "name": "South A", "status": "Stocked", "cluster": JSON{"name": "South"}, "active": true, "size": 400},
	{"id": "p4", "name": "South B", "status": "Harvested", "cluster": JSON{"name": "South"}, "active": true, "size": 150},
	{"id": "p5", "name": "East", "status": "stocked", "cluster": JSON{"name": "East"}, "active": false, "size": 300},
}

func jsonLines(documents ...JSON) string {
	body := ""
	for _, document := range documents {
		b, _ := json.Marshal(document)
		body += string(b) + "\n"
	}
	return body
}

// rowNames extracts the name of every row of a page or a rendered view.
func rowNames(body interface{}) []string {
	page := body.(JSON)
	if p, ok := page["page"].(JSON); ok {
		page = p
	}
	result := []string{}
	for _, row := range page["rows"].([]interface{}) {
		result = append(result, row.(JSON)["name"].(string))
	}
	return result
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/datasets").
			WithBodyJson(JSON{
				"name": "ponds",
			}).Do()
		SaveExample(resp, "Create dataset", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		body := resp.BodyJson().(JSON)
		biff.AssertEqual(body["name"], "ponds")
		biff.AssertEqualJson(body["total"], 0)
		biff.AssertEqualJson(body["indexes"], []JSON{})
		biff.AssertEqual(body["catalog"].(JSON)["title"], "Ponds")

		a.Alternative("Retrieve dataset", func(a *biff.A) {
			resp := apiRequest("GET", "/datasets/ponds").Do()
			SaveExample(resp, "Retrieve dataset", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJson().(JSON)["name"], "ponds")
		})

		a.Alternative("List datasets", func(a *biff.A) {
			resp := apiRequest("GET", "/datasets").Do()
			SaveExample(resp, "List datasets", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			list := resp.BodyJson().([]interface{})
			biff.AssertEqual(len(list), 1)
			biff.AssertEqual(list[0].(JSON)["name"], "ponds")
		})

		a.Alternative("Create twice", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets").
				WithBodyJson(JSON{"name": "ponds"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "dataset already exists",
					"description": "choose another dataset name",
				},
			})
		})

		a.Alternative("Drop dataset", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets/ponds:drop").Do()
			SaveExample(resp, "Drop dataset", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			a.Alternative("Get dropped dataset", func(a *biff.A) {
				resp := apiRequest("GET", "/datasets/ponds").Do()
				SaveExample(resp, "Get dataset - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     "dataset not found",
						"description": "dataset 'ponds' does not exist",
					},
				})
			})
		})

		a.Alternative("Insert many", func(a *biff.A) {
			resp := apiRequest("POST", "/datasets/ponds:insert").
				WithBodyString(jsonLines(acceptancePonds...)).Do()
			SaveExample(resp, "Insert many", `
				Documents are sent one per line. The response holds the stored
				documents in the same format.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(resp.BodyString(), jsonLines(acceptancePonds...))

			a.Alternative("Find - filter and sort", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{
						"filters": JSON{"status": "stocked"},
						"sort":    JSON{"field": "size", "direction": "desc"},
					}).Do()
				SaveExample(resp, "Find - filter and sort", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				body := resp.BodyJson()
				biff.AssertEqual(rowNames(body), []string{"South A", "East", "North A"})
				biff.AssertEqualJson(body.(JSON)["totalElements"], 3)
				biff.AssertEqual(body.(JSON)["label"], "Showing 1 to 3 of 3 results")
			})

			a.Alternative("Find - range", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{
						"filters": JSON{"size": JSON{"from": 150, "to": 300}},
					}).Do()

				biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North B", "South B", "East"})
			})

			a.Alternative("Find - flag and dot path", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{
						"filters": JSON{
							"active":       true,
							"cluster.name": "south",
						},
					}).Do()

				biff.AssertEqual(rowNames(resp.BodyJson()), []string{"South A", "South B"})
			})

			a.Alternative("Find - query", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{
						"filters": JSON{"big": JSON{"size": JSON{"$gt": 200}}},
					}).Do()
				SaveExample(resp, "Find - query", ``)

				biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North B", "South A", "East"})
			})

			a.Alternative("Find - search and pagination", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{
						"search": "a",
						"page":   7,
						"size":   3,
					}).Do()

				body := resp.BodyJson()
				biff.AssertEqual(rowNames(body), []string{"North A", "South A", "South B", "East"})
				biff.AssertEqualJson(body.(JSON)["page"], 0)
				biff.AssertEqualJson(body.(JSON)["size"], 10)
				biff.AssertEqualJson(body.(JSON)["totalPages"], 1)
			})

			a.Alternative("Find - malformed", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").
					WithBodyString(`{"search": `).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Find - no body", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:find").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(len(rowNames(resp.BodyJson())), 5)
			})

			a.Alternative("Remove by fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:remove").
					WithBodyJson(JSON{
						"limit":  -1,
						"filter": JSON{"active": false},
					}).Do()
				SaveExample(resp, "Remove - by fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(resp.BodyString(), jsonLines(acceptancePonds[1], acceptancePonds[4]))

				resp = apiRequest("POST", "/datasets/ponds:find").Do()
				biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North A", "South A", "South B"})
			})

			a.Alternative("Patch by fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:patch").
					WithBodyJson(JSON{
						"limit":  2,
						"filter": JSON{"status": "Stocked"},
						"patch":  JSON{"status": "Harvested"},
					}).Do()
				SaveExample(resp, "Patch - by fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(strings.Count(resp.BodyString(), `"status":"Harvested"`), 2)

				resp = apiRequest("POST", "/datasets/ponds:find").
					WithBodyJson(JSON{"filters": JSON{"status": "harvested"}}).Do()
				biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North A", "South A", "South B"})
			})

			a.Alternative("Create index", func(a *biff.A) {
				resp := apiRequest("POST", "/datasets/ponds:createIndex").
					WithBodyJson(JSON{"name": "by-id", "field": "id"}).Do()
				SaveExample(resp, "Create index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"name": "by-id", "field": "id", "sparse": false})

				a.Alternative("Insert conflict", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/ponds:insert").
						WithBodyJson(acceptancePonds[0]).Do()
					SaveExample(resp, "Insert - unique index conflict", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusConflict)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"error": JSON{
							"message":     "index add 'by-id': index conflict: field 'id' with value 'p1'",
							"description": "a unique index already holds that value",
						},
					})
				})

				a.Alternative("Remove by index", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/ponds:remove").
						WithBodyJson(JSON{"index": "by-id", "value": "p2"}).Do()
					SaveExample(resp, "Remove - by index", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(resp.BodyString(), jsonLines(acceptancePonds[1]))
				})

				a.Alternative("Patch by index", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/ponds:patch").
						WithBodyJson(JSON{
							"index": "by-id",
							"value": "p5",
							"patch": JSON{"name": "East Pond", "size": nil},
						}).Do()
					SaveExample(resp, "Patch - by index", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(resp.BodyString(),
						`{"active":false,"cluster":{"name":"East"},"id":"p5","name":"East Pond","status":"stocked"}`+"\n")
				})

				a.Alternative("Remove by missing value", func(a *biff.A) {
					resp := apiRequest("POST", "/datasets/ponds:remove").
						WithBodyJson(JSON{"index": "by-id", "value": "p9"}).Do()

					biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				})
			})

			a.Alternative("Open a view", func(a *biff.A) {
				resp := apiRequest("POST", "/views").
					WithBodyJson(JSON{"dataset": "ponds", "role": "farmer"}).Do()
				SaveExample(resp, "Create view", `
					A view keeps search, filter panel, sort and pagination on
					the server. Controls are the filters the role can see.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				view := resp.BodyJson().(JSON)
				biff.AssertEqual(view["panel"], "closed")
				biff.AssertEqualJson(view["sort"], JSON{"field": "name", "direction": "asc"})
				biff.AssertEqualJson(view["controls"], []JSON{
					{"key": "status", "label": "Status", "kind": "exact"},
					{"key": "active", "label": "Active", "kind": "flag"},
				})
				biff.AssertEqual(rowNames(view), []string{"East", "North A", "North B", "South A", "South B"})

				viewPath := "/views/" + view["id"].(string)

				a.Alternative("Filter panel", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":toggle").Do()
					biff.AssertEqual(resp.BodyJson().(JSON)["panel"], "open")

					resp = apiRequest("POST", viewPath+":setFilter").
						WithBodyJson(JSON{"key": "status", "filter": "Stocked"}).Do()
					SaveExample(resp, "View - set filter", ``)
					view := resp.BodyJson().(JSON)
					biff.AssertEqual(view["panel"], "pending")
					biff.AssertEqualJson(view["pending"], JSON{"status": "Stocked"})
					biff.AssertEqualJson(view["applied"], JSON{})
					biff.AssertEqual(len(rowNames(view)), 5)

					resp = apiRequest("POST", viewPath+":apply").Do()
					SaveExample(resp, "View - apply filters", ``)
					view = resp.BodyJson().(JSON)
					biff.AssertEqual(view["panel"], "open")
					biff.AssertEqual(rowNames(view), []string{"East", "North A", "South A"})

					a.Alternative("Remove filter", func(a *biff.A) {
						resp := apiRequest("POST", viewPath+":removeFilter").
							WithBodyJson(JSON{"key": "status"}).Do()
						view := resp.BodyJson().(JSON)
						biff.AssertEqual(len(rowNames(view)), 5)
						biff.AssertEqual(view["panel"], "open")
					})

					a.Alternative("Clear", func(a *biff.A) {
						resp := apiRequest("POST", viewPath+":clear").Do()
						view := resp.BodyJson().(JSON)
						biff.AssertEqual(len(rowNames(view)), 5)
						biff.AssertEqualJson(view["applied"], JSON{})
					})

					a.Alternative("Close the panel keeps the filters", func(a *biff.A) {
						resp := apiRequest("POST", viewPath+":toggle").Do()
						view := resp.BodyJson().(JSON)
						biff.AssertEqual(view["panel"], "closed")
						biff.AssertEqual(len(rowNames(view)), 3)
					})
				})

				a.Alternative("Edit while closed is ignored", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":setFilter").
						WithBodyJson(JSON{"key": "status", "filter": "Empty"}).Do()
					view := resp.BodyJson().(JSON)
					biff.AssertEqual(view["panel"], "closed")
					biff.AssertEqualJson(view["pending"], JSON{})
				})

				a.Alternative("Search", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":search").
						WithBodyJson(JSON{"term": "NORTH"}).Do()
					SaveExample(resp, "View - search", ``)

					biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North A", "North B"})
				})

				a.Alternative("Sort cycle", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":sort").
						WithBodyJson(JSON{"field": "size"}).Do()
					biff.AssertEqual(rowNames(resp.BodyJson()), []string{"North A", "South B", "North B", "East", "South A"})

					resp = apiRequest("POST", viewPath+":sort").
						WithBodyJson(JSON{"field": "size"}).Do()
					biff.AssertEqual(rowNames(resp.BodyJson()), []string{"South A", "East", "North B", "South B", "North A"})

					resp = apiRequest("POST", viewPath+":sort").
						WithBodyJson(JSON{"field": "size"}).Do()
					view := resp.BodyJson().(JSON)
					biff.AssertNil(view["sort"])
					biff.AssertEqual(rowNames(view), []string{"North A", "North B", "South A", "South B", "East"})
				})

				a.Alternative("Pagination", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":pageSize").
						WithBodyJson(JSON{"size": 25}).Do()
					view := resp.BodyJson().(JSON)
					biff.AssertEqualJson(view["page"].(JSON)["size"], 30)

					resp = apiRequest("POST", viewPath+":page").
						WithBodyJson(JSON{"page": 4}).Do()
					page := resp.BodyJson().(JSON)["page"].(JSON)
					biff.AssertEqualJson(page["page"], 0)
					biff.AssertEqual(page["label"], "Showing 1 to 5 of 5 results")
				})

				a.Alternative("Close view", func(a *biff.A) {
					resp := apiRequest("POST", viewPath+":close").Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

					resp = apiRequest("GET", viewPath).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
					biff.AssertEqual(resp.BodyJson().(JSON)["error"].(JSON)["message"], "view not found")
				})
			})
		})
	})

	a.Alternative("Find on missing dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/datasets/invented:find").
			WithBodyJson(JSON{}).Do()
		SaveExample(resp, "Find - dataset not found", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqual(resp.BodyJson().(JSON)["error"].(JSON)["message"], "dataset not found")
	})

	a.Alternative("View on missing dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/views").
			WithBodyJson(JSON{"dataset": "invented", "role": "admin"}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Insert on not existing dataset", func(a *biff.A) {
		resp := apiRequest("POST", "/datasets/sales:insert").
			WithBodyJson(JSON{"buyer": "Lagos Market", "total": 1200}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)

		resp = apiRequest("GET", "/datasets/sales").Do()
		biff.AssertEqualJson(resp.BodyJson().(JSON)["total"], 1)
	})
}
