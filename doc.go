// Package stanseg drives the Stanford Word Segmenter for Chinese and Arabic
// from Go.
//
// The segmentation itself happens inside the segmenter's Java artifact; this
// package locates the jars, models and a Java runtime, assembles the command
// line, stages input through temporary files and decodes what the JVM
// prints.
//
// # Quick Start
//
//	seg, err := stanseg.New(
//	    stanseg.WithJar("/opt/stanford-segmenter/stanford-segmenter.jar"),
//	    stanseg.WithSLF4J("/opt/stanford-segmenter/slf4j-api.jar"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := seg.ApplyDefaults("zh"); err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := seg.Segment(ctx, []string{"这是斯坦福中文分词器测试"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out) // 这 是 斯坦福 中文 分词器 测试
//
// # Locating Artifacts
//
// Paths passed as options win. Otherwise the jars are searched through the
// STANFORD_SEGMENTER and SLF4J environment variables, and ApplyDefaults
// resolves models through STANFORD_MODELS and $STANFORD_SEGMENTER/data.
// Lookups that fail return a *NotFoundError describing what was tried.
//
// # Thread Safety
//
// Segmenter is safe for concurrent use. JVM options are passed to each
// launch rather than set globally, and the number of JVMs running at once is
// bounded by WithMaxProcs.
//
// # Artifacts
//
// Download the segmenter distribution from https://nlp.stanford.edu/software/segmenter.html
package stanseg
