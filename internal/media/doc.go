// Package media models resolved media assets and their playable samples.
//
// A Record is the raw catalog entry for one authority; NewAsset turns it into
// an Asset with derived HTTP URLs, a MIME category and, for audio and video,
// a SampleCollection whose first entry is always the implicit `complete`
// sample.
package media
