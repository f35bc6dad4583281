package graph

// Well-known predicate and type names used throughout the instantiation
// pipeline. An authoring JSON-LD context is expected to define terms for
// all of these; the engine itself only ever deals with the resolved
// string form, so a short vocabulary of constants is enough — there is no
// need to carry a full IRI-expansion table in the core.
const (
	PredType                  = "rdf:type"
	PredParameter             = "parameter"
	PredDefault               = "default"
	PredRange                 = "range"
	PredUnique                = "unique"
	PredConstructorArguments  = "constructorArguments"
	PredModule                = "module"
	PredInheritValues         = "inheritValues"
	PredRequireName           = "requireName"
	PredRequireElement        = "requireElement"
	PredRequireNoConstructor  = "requireNoConstructor"
	PredFields                = "fields"
	PredElements              = "elements"
	PredKey                   = "key"
	PredValue                 = "value"
	PredOnParameter           = "onParameter"
	PredOverrideParameter     = "overrideParameter"
	PredOverrideTarget        = "overrideTarget"
	PredOverrideValue         = "overrideValue"
	PredComponents            = "components"
	PredArguments             = "arguments"
	PredOverrideSteps         = "overrides"
	PredOverrideIndex         = "overrideIndex"
	PredName                  = "name"

	// DatatypeExpr marks a parameter's default literal as an expr-lang
	// expression to be evaluated against sibling parameter values (the
	// Generics preprocessor), rather than a literal constant.
	DatatypeExpr = "expr"

	TypeUndefinedArgument = "UndefinedArgument"

	TypeModule            = "Module"
	TypeAbstractClass      = "AbstractClass"
	TypeClass              = "Class"
	TypeComponentInstance  = "ComponentInstance"
	TypeVariable           = "Variable"
	TypeObjectMapping      = "ObjectMapping"

	TypeOverrideListInsertBefore = "OverrideListInsertBefore"
	TypeOverrideListInsertAfter  = "OverrideListInsertAfter"
	TypeOverrideListInsertAt     = "OverrideListInsertAt"
	TypeOverrideListRemove       = "OverrideListRemove"
	TypeOverrideReplace          = "OverrideReplace"
	TypeOverrideClear            = "OverrideClear"
)

// rdfNil is the well-known terminator of an RDF collection, mirrored here as
// a reserved IRI so List() can recognise the end of a first/rest chain built
// by NewList.
const rdfNil = "rdf:nil"
