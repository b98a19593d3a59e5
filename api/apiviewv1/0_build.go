package apiviewv1

import (
	"github.com/fulldump/box"
)

// BuildV1View mounts the server side list views. Each action mirrors a
// control of the list screen and answers with the rendered view.
func BuildV1View(v1 *box.R) *box.R {

	views := v1.Resource("/views").
		WithActions(
			box.Post(createView).WithName("createView"),
		)

	v1.Resource("/views/{viewId}").
		WithActions(
			box.Get(getView).WithName("getView"),
			box.ActionPost(toggle).WithName("toggle"),
			box.ActionPost(search).WithName("search"),
			box.ActionPost(setFilter).WithName("setFilter"),
			box.ActionPost(apply).WithName("apply"),
			box.ActionPost(clearFilters).WithName("clear"),
			box.ActionPost(removeFilter).WithName("removeFilter"),
			box.ActionPost(sortBy).WithName("sort"),
			box.ActionPost(page).WithName("page"),
			box.ActionPost(pageSize).WithName("pageSize"),
			box.ActionPost(closeView).WithName("close"),
		)

	return views
}
