// Package packager converts a directory of source assets into a YURI archive.
//
// The source directory holds one level of subdirectories. Every regular file inside them is
// classified by suffix:
//
//	.bin       embedded blob
//	.vert.spv  vertex shader        .frag.spv  fragment shader
//	.bmp       image, encoded to QOI    .qoi   image, stored as-is
//	.wav       audio, encoded to QOA    .qoa   audio, stored as-is
//	.obj       model    .xml  scene    .lua  script
//
// Other files are skipped. Each asset is named "/<subdirectory>/<file name up to the first
// dot>", so textures/grass.bmp becomes the image "/textures/grass".
//
// Files are converted concurrently; entries are added to the archive in sorted path order,
// so the output does not depend on the worker count.
package packager
