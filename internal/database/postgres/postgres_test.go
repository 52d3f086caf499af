package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements_SkipsCommentsAndBlanks(t *testing.T) {
	schema := `
-- farm records
CREATE TABLE farm (id UUID PRIMARY KEY);

-- advisories
CREATE TABLE advisory (
    id UUID PRIMARY KEY, -- wrapper
    farm_id UUID NOT NULL
);
;
`
	statements := SplitStatements(schema)

	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE farm (id UUID PRIMARY KEY)", statements[0])
	assert.Contains(t, statements[1], "CREATE TABLE advisory")
	assert.Contains(t, statements[1], "farm_id UUID NOT NULL")
}
