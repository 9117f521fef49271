// Package dynamodb implements the graph-shaped event store on a DynamoDB
// single table. Filters are always expressed through the expression
// builder so user-controlled terms reach the store as bound values, never
// as spliced query text.
package dynamodb

import (
	"strings"
	"time"

	"eventlens-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// MaxResults caps a result set. Combined with the newest-first index
// order, the cap always keeps the most recent matches.
const MaxResults = 1000

// Tokens shorter than this never discriminate anything useful.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "in": {}, "on": {}, "at": {},
	"of": {}, "to": {}, "from": {}, "with": {}, "by": {},
}

// TopicTokens splits a topic on whitespace, lowercases it and drops stop
// words. The result may be empty, in which case the topic constrains
// nothing.
func TopicTokens(topic string) []string {
	fields := strings.Fields(strings.ToLower(topic))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// BuildQueryExpression translates a StructuredFilter into a DynamoDB
// expression against the events-by-date index. Each filter field is
// independently optional; absent fields emit no condition. The returned
// expression always carries the key condition; the filter condition is
// only present when at least one field constrains the result.
func BuildQueryExpression(filter events.StructuredFilter) (expression.Expression, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(gsi1AllEvents))

	start := filter.TimePeriod.StartDate
	end := filter.TimePeriod.EndDate
	switch {
	case start != nil && end != nil:
		keyCond = keyCond.And(expression.Key("GSI1SK").Between(
			expression.Value(BuildDateSK(formatDate(*start))),
			expression.Value(BuildDateSK(formatDate(*end))),
		))
	case start != nil:
		keyCond = keyCond.And(expression.Key("GSI1SK").GreaterThanEqual(
			expression.Value(BuildDateSK(formatDate(*start))),
		))
	case end != nil:
		keyCond = keyCond.And(expression.Key("GSI1SK").LessThanEqual(
			expression.Value(BuildDateSK(formatDate(*end))),
		))
	}

	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	var groups []expression.ConditionBuilder

	if tokens := TopicTokens(filter.Topic); len(tokens) > 0 {
		// Any one remaining token may match (logical OR).
		groups = append(groups, anyContains("SearchText", tokens))
	}

	if terms := lowerTerms(filter.Actors); len(terms) > 0 {
		groups = append(groups, anyContains("ActorNames", terms))
	}

	if terms := lowerTerms(filter.Locations); len(terms) > 0 {
		groups = append(groups, anyContains("LocationNames", terms))
	}

	if len(groups) > 0 {
		cond := groups[0]
		for _, group := range groups[1:] {
			cond = cond.And(group)
		}
		builder = builder.WithFilter(cond)
	}

	return builder.Build()
}

// anyContains ORs case-insensitive substring conditions over a
// denormalized lowercase attribute.
func anyContains(attribute string, terms []string) expression.ConditionBuilder {
	cond := expression.Contains(expression.Name(attribute), terms[0])
	for _, term := range terms[1:] {
		cond = cond.Or(expression.Contains(expression.Name(attribute), term))
	}
	return cond
}

func lowerTerms(terms []string) []string {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			lowered = append(lowered, term)
		}
	}
	return lowered
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
