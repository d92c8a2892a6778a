// Package validator provides the rule engine that guards every setting and
// the result types used to report violations.
//
// # Rules
//
// A [Validator] is a pure predicate returning (ok, reason). The set of rules
// is closed:
//
//   - [TypeCheck]: the value's [Kind] is one of a fixed set
//   - [Range]: a numeric value inside inclusive, optionally open bounds
//   - [Enum]: the value equals one member of a fixed ordered set
//   - [Pattern]: a string value fully matches a regular expression
//   - [Composite]: sub-rules in order, first failure wins
//
// Rules never panic. Failures carry a reason that can be shown to a user as is.
//
//	lang := validator.NewEnum("ru", "en")
//	ok, reason := lang.Validate("es")
//	// ok == false, reason == `value "es" not in allowed values: ["ru", "en"]`
//
// # Reports
//
// [Result] aggregates [Issue] values of different [Severity] and [Reporter]
// renders them as colored text or JSON:
//
//	result := &validator.Result{}
//	result.Check("app.language", lang, "es")
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator
