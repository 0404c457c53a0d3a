// Package signature locates season/episode markers (S04E01) inside loosely
// formatted file names and decides whether two names point at the same
// episode.
//
// A marker is the letter 's' or 'e' immediately followed by a run of ASCII
// digits. Names are lowercased before the search, so matching is case
// insensitive. When the marker letter appears several times, the first
// occurrence that is directly followed by digits wins; letters embedded in the
// title ("hello", "some.video") are skipped because no digits follow them.
//
// Two names match when both carry a season and an episode marker and the
// literal marker substrings are equal. "s4" and "s04" differ under the default
// Exact policy; the Numeric policy ignores zero padding instead.
//
// Every function here is pure and safe for concurrent use.
package signature
