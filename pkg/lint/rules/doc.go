// Package rules provides the built-in NatSpec rules for lintspec.
//
// # Rules
//
//   - NS001: notice - @notice presence, absence and uniqueness
//   - NS002: dev - @dev presence, absence and uniqueness
//   - NS003: title - @title on contracts, interfaces and libraries
//   - NS004: author - @author on contracts, interfaces and libraries
//   - NS005: param - one @param per named parameter, struct member or enum variant
//   - NS006: return - one @return per return value
//   - NS007: inheritdoc - @inheritdoc names an ancestor
//   - NS008: malformed-comment - doc comment delimiter anomalies
//
// Which tags are required, ignored or forbidden comes from the
// configuration bucket of each declaration (see lint.Resolve).
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll.
package rules
