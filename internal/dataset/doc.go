// Package dataset converts rendered material previews into training
// datasets.
//
// The renderer writes, per frame, a set of outputs such as
// Chair_0003_render.png, Chair_0003_depth.exr, Chair_0003_albedo.exr and
// Chair_0003_normal.exr, plus an annotation Chair_0003.json. The frame is
// listed in train.csv or test.csv, and every class name in class.csv.
//
// # Detection Datasets
//
//	c := dataset.NewConverter(settings, onProgress, logger)
//	err := c.Convert(ctx, "render/output", "pbr_dataset")
//
// produces images/, depth/, seg/, normals/, labels/ and annotations/
// folders, each split into train/ and test/, next to fresh class.csv,
// train.csv and test.csv indexes. Labels use the YOLO layout
// "<class> x y w h".
//
// # Stereo Datasets
//
//	train, test, err := dataset.StereoSplit(ctx, "render/out", "pbr_stereo", 3, 16)
//
// copies *stereo_L.png, *stereo_R.png, *depth_L.exr and *depth_R.exr pairs
// and writes train.json and test.json.
package dataset
