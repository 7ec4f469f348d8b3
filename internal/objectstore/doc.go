// Package objectstore stores product and site images in named buckets.
//
// A bucket is a directory of an afero filesystem. Objects are addressed by a
// slash separated path inside their bucket and are served read only under a
// public URL prefix, e.g. http://localhost:8080/storage/product-images/products/x.jpg.
package objectstore
