// Package matcher pairs a video with the dub audio and subtitle files that
// belong to the same episode.
//
// The source directory holds one root per asset class ("Rus Sound" and
// "Rus Subs" by default), each containing a directory per release group. A
// Strategy derives the episode key from the video name and decides which files
// in a group directory match it. NumericKey compares the first digit run of
// both names, Prefix requires the candidate to start with the video stem.
//
// The two strategies deliberately differ in extension handling: NumericKey
// accepts ".MKA" and ".ASS" in any case, Prefix only the lowercase forms.
package matcher
