package jsonschema

// defaultEvaluatorFactory implements every Draft 2020-12 keyword this
// engine recognizes. It is always the last factory in the chain; user
// factories compose in front of it and can shadow any keyword by returning
// their own Evaluator for it.
type defaultEvaluatorFactory struct{}

// NewDefaultEvaluatorFactory returns the engine's built-in keyword factory.
func NewDefaultEvaluatorFactory() EvaluatorFactory { return defaultEvaluatorFactory{} }

func (defaultEvaluatorFactory) Create(pctx *parseContext, keyword string, member JsonNode, schemaNode JsonNode) (Evaluator, bool, error) {
	switch keyword {
	case "$ref":
		ev, err := newRefEvaluator(pctx, member)
		return ev, true, err
	case "$dynamicRef":
		ev, err := newDynamicRefEvaluator(pctx, member)
		return ev, true, err
	case "$recursiveRef":
		ev, err := newRecursiveRefEvaluator(pctx, member)
		return ev, true, err

	case "type":
		ev, err := newTypeEvaluator(member)
		return ev, true, err
	case "enum":
		ev, err := newEnumEvaluator(member)
		return ev, true, err
	case "const":
		ev, err := newConstEvaluator(member)
		return ev, true, err

	case "multipleOf":
		ev, err := newMultipleOfEvaluator(member)
		return ev, true, err
	case "maximum":
		ev, err := newMaximumEvaluator(member)
		return ev, true, err
	case "exclusiveMaximum":
		ev, err := newExclusiveMaximumEvaluator(member)
		return ev, true, err
	case "minimum":
		ev, err := newMinimumEvaluator(member)
		return ev, true, err
	case "exclusiveMinimum":
		ev, err := newExclusiveMinimumEvaluator(member)
		return ev, true, err
	case "maxLength":
		ev, err := newMaxLengthEvaluator(member)
		return ev, true, err
	case "minLength":
		ev, err := newMinLengthEvaluator(member)
		return ev, true, err
	case "pattern":
		ev, err := newPatternEvaluator(member)
		return ev, true, err
	case "maxItems":
		ev, err := newMaxItemsEvaluator(member)
		return ev, true, err
	case "minItems":
		ev, err := newMinItemsEvaluator(member)
		return ev, true, err
	case "uniqueItems":
		ev, err := newUniqueItemsEvaluator(member)
		return ev, true, err
	case "maxProperties":
		ev, err := newMaxPropertiesEvaluator(member)
		return ev, true, err
	case "minProperties":
		ev, err := newMinPropertiesEvaluator(member)
		return ev, true, err
	case "required":
		ev, err := newRequiredEvaluator(member)
		return ev, true, err

	case "properties":
		ev, err := newPropertiesEvaluator(pctx, member)
		return ev, true, err
	case "patternProperties":
		ev, err := newPatternPropertiesEvaluator(pctx, member)
		return ev, true, err
	case "additionalProperties":
		ev, err := newAdditionalPropertiesEvaluator(pctx, member, schemaNode)
		return ev, true, err
	case "propertyNames":
		ev, err := newPropertyNamesEvaluator(pctx, member)
		return ev, true, err

	case "items":
		ev, err := newItemsEvaluator(pctx, member, schemaNode)
		return ev, true, err
	case "prefixItems":
		ev, err := newPrefixItemsEvaluator(pctx, member)
		return ev, true, err
	case "contains":
		ev, err := newContainsEvaluator(pctx, member, schemaNode)
		return ev, true, err
	case "maxContains", "minContains":
		// consumed as part of contains; no standalone evaluator.
		return nil, true, nil

	case "allOf":
		ev, err := newAllOfEvaluator(pctx, member)
		return ev, true, err
	case "anyOf":
		ev, err := newAnyOfEvaluator(pctx, member)
		return ev, true, err
	case "oneOf":
		ev, err := newOneOfEvaluator(pctx, member)
		return ev, true, err
	case "not":
		ev, err := newNotEvaluator(pctx, member)
		return ev, true, err
	case "if":
		ev, err := newConditionalEvaluator(pctx, schemaNode)
		return ev, true, err
	case "then", "else":
		// consumed as part of `if`; no standalone evaluator.
		return nil, true, nil

	case "dependentSchemas":
		ev, err := newDependentSchemasEvaluator(pctx, member)
		return ev, true, err
	case "dependentRequired":
		ev, err := newDependentRequiredEvaluator(member)
		return ev, true, err

	case "unevaluatedItems":
		ev, err := newUnevaluatedItemsEvaluator(pctx, member)
		return ev, true, err
	case "unevaluatedProperties":
		ev, err := newUnevaluatedPropertiesEvaluator(pctx, member)
		return ev, true, err

	case "format":
		ev, err := newFormatEvaluator(pctx, member)
		return ev, true, err
	case "contentEncoding", "contentMediaType", "contentSchema":
		ev, err := newContentEvaluator(pctx, keyword, member, schemaNode)
		return ev, true, err

	default:
		return nil, false, nil
	}
}
