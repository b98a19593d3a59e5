package apidatasetv1

import (
	"github.com/fulldump/box"
)

func BuildV1Dataset(v1 *box.R) *box.R {

	datasets := v1.Resource("/datasets").
		WithActions(
			box.Get(listDatasets).WithName("listDatasets"),
			box.Post(createDataset).WithName("createDataset"),
		)

	v1.Resource("/datasets/{datasetName}").
		WithActions(
			box.Get(getDataset).WithName("getDataset"),
			box.ActionPost(insert).WithName("insert"),
			box.ActionPost(find).WithName("find"),
			box.ActionPost(remove).WithName("remove"),
			box.ActionPost(patch).WithName("patch"),
			box.ActionPost(createIndex).WithName("createIndex"),
			box.ActionPost(dropDataset).WithName("drop"),
		)

	return datasets
}
