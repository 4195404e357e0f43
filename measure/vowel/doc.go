// Package vowel estimates the first two formants of a magnitude spectrum and
// classifies them against five reference vowels.
//
// [Classify] is stateless. [Classifier] smooths per-frame results over a
// short history and is the only stateful type; it is not safe for
// concurrent use.
package vowel
