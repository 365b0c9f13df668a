// Package profile defines the portfolio data model: personal details, the
// repeatable skills/experience/education/projects lists and the optional
// inline profile image. Values are plain structs so editors can copy them
// cheaply and renderers can read them without locking.
//
// Every repeatable list always holds at least one entry. Blank placeholder
// entries are kept in storage and filtered out only at render time through
// the Renderable predicates defined here.
package profile
