// Package objectid generates compact, roughly time-ordered 14-byte identifiers.
//
// # Layout
//
// An ObjectID is 14 bytes, big-endian throughout:
//
//	[0:6]   timestamp, unsigned 48-bit milliseconds since the Unix epoch
//	[6]     type tag, caller supplied
//	[7:11]  salt, random and fixed for the lifetime of a State
//	[11:14] counter, 24-bit, advanced once per identifier and wrapping to zero
//
// Byte-wise comparison therefore orders identifiers by millisecond first.
// Identifiers created in the same millisecond order by type, salt and then
// counter, so there is no time ordering below one millisecond.
//
// # Uniqueness
//
// Within one State the counter hands out every 24-bit value exactly once
// before it wraps. Across processes uniqueness is probabilistic and rests on
// the random salt; nothing is coordinated between machines.
//
// # Usage
//
//	id, err := objectid.Generate(5)
//	s := id.String()                       // 28 lowercase hex characters
//	b64, _ := id.Render(objectid.Base64)   // 20 base64 characters
//
//	g := objectid.NewGenerator(objectid.WithTimestampPolicy(objectid.TimestampTruncate))
//	id, err = g.Generate(0)
package objectid
