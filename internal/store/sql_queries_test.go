// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostack/fieldsync/models"
)

func Test_buildListRecordsQuery_SQLContainsParts(t *testing.T) {
	userID := int64(42)

	query, args, err := buildListRecordsQuery(userID, models.RecordQuery{})
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from records")
	require.Contains(t, q, "where")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "order by updated_at asc, id asc")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	// columns presence (subset / key columns)
	require.Contains(t, q, "entity_type")
	require.Contains(t, q, "entity_id")
	require.Contains(t, q, "payload")
	require.Contains(t, q, "version")
	require.Contains(t, q, "deleted")
	require.Contains(t, q, "updated_at")

	// tombstones are filtered out unless the caller opts in
	require.Len(t, args, 2)
	require.Equal(t, userID, args[0])
	require.Equal(t, false, args[1])
}

func Test_buildListRecordsQuery(t *testing.T) {
	userID := int64(42)
	since := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		query      models.RecordQuery
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:  "success: no filters lists live rows only",
			query: models.RecordQuery{},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				whereIdx := strings.Index(q, "where")
				require.NotEqual(t, -1, whereIdx, "query should contain WHERE clause")
				wherePart := q[whereIdx:]
				require.NotContains(t, wherePart, "entity_type in",
					"WHERE clause should not filter entity_type without a type filter")
				require.Contains(t, wherePart, "deleted")

				require.Len(t, args, 2)
				assert.Equal(t, userID, args[0])
				assert.Equal(t, false, args[1])
			},
		},
		{
			name: "success: entity type and id filters become IN clauses",
			query: models.RecordQuery{
				EntityTypes: []models.EntityType{models.EntityGermplasm, models.EntityTrial},
				EntityIDs:   []string{"g-001"},
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "entity_type in ($2,$3)")
				require.Contains(t, q, "entity_id in ($4)")

				require.Len(t, args, 5)
				assert.Equal(t, userID, args[0])
				assert.Equal(t, models.EntityGermplasm, args[1])
				assert.Equal(t, models.EntityTrial, args[2])
				assert.Equal(t, "g-001", args[3])
				assert.Equal(t, false, args[4])
			},
		},
		{
			name: "success: pull shape keeps tombstones and filters by watermark",
			query: models.RecordQuery{
				EntityTypes:    []models.EntityType{models.EntityObservation},
				Since:          &since,
				IncludeDeleted: true,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "updated_at > $3")

				whereIdx := strings.Index(q, "where")
				wherePart := q[whereIdx:]
				require.NotContains(t, wherePart, "deleted =",
					"IncludeDeleted must drop the tombstone filter so deletions replicate")

				require.Len(t, args, 3)
				assert.Equal(t, userID, args[0])
				assert.Equal(t, models.EntityObservation, args[1])
				assert.Equal(t, since, args[2])
			},
		},
		{
			name: "success: pagination renders LIMIT and OFFSET",
			query: models.RecordQuery{
				Page:     2,
				PageSize: 25,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				q := strings.ToLower(query)

				require.Contains(t, q, "limit 25")
				require.Contains(t, q, "offset 50")
			},
		},
		{
			name: "success: idempotent for same query",
			query: models.RecordQuery{
				EntityTypes: []models.EntityType{models.EntityStudy},
				Since:       &since,
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				query2, args2, err2 := buildListRecordsQuery(userID, models.RecordQuery{
					EntityTypes: []models.EntityType{models.EntityStudy},
					Since:       &since,
				})
				require.NoError(t, err2)
				require.Equal(t, query, query2)
				require.Equal(t, args, args2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListRecordsQuery(userID, tt.query)

			require.NoError(t, err)
			require.NotEmpty(t, query)
			require.NotNil(t, args)

			tt.checkQuery(t, query, args)
		})
	}
}

func Test_buildCountRecordsQuery_SharesListFilters(t *testing.T) {
	userID := int64(7)
	query := models.RecordQuery{
		EntityTypes: []models.EntityType{models.EntityGermplasm},
		Page:        3,
		PageSize:    10,
	}

	countSQL, countArgs, err := buildCountRecordsQuery(userID, query)
	require.NoError(t, err)

	q := strings.ToLower(countSQL)
	require.Contains(t, q, "select count(*)")
	require.Contains(t, q, "from records")

	// the count ignores pagination and ordering
	require.NotContains(t, q, "limit")
	require.NotContains(t, q, "order by")

	// but keeps the same WHERE clause and arguments as the list query
	listSQL, listArgs, err := buildListRecordsQuery(userID, query)
	require.NoError(t, err)

	listWhere := listSQL[strings.Index(listSQL, "WHERE"):strings.Index(listSQL, " ORDER BY")]
	countWhere := countSQL[strings.Index(countSQL, "WHERE"):]
	require.Equal(t, listWhere, countWhere)
	require.Equal(t, listArgs, countArgs)
}

func Test_buildListChangedAttachmentsQuery_SQLContainsParts(t *testing.T) {
	userID := int64(42)

	t.Run("success: nil watermark lists everything", func(t *testing.T) {
		query, args, err := buildListChangedAttachmentsQuery(userID, nil)
		require.NoError(t, err)

		q := strings.ToLower(query)

		require.Contains(t, q, "from attachments")
		require.Contains(t, q, "user_id = $1")
		require.Contains(t, q, "order by created_at asc, id asc")
		require.NotContains(t, q, "created_at >")

		require.Len(t, args, 1)
		require.Equal(t, userID, args[0])
	})

	t.Run("success: watermark filters by creation time", func(t *testing.T) {
		since := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

		query, args, err := buildListChangedAttachmentsQuery(userID, &since)
		require.NoError(t, err)

		q := strings.ToLower(query)
		require.Contains(t, q, "created_at > $2")

		require.Len(t, args, 2)
		require.Equal(t, userID, args[0])
		require.Equal(t, since, args[1])
	})
}

func Test_buildListLocalRecordsQuery_SQLContainsParts(t *testing.T) {
	t.Run("success: no filters, SQLite placeholders", func(t *testing.T) {
		query, args, err := buildListLocalRecordsQuery(models.RecordQuery{})
		require.NoError(t, err)

		q := strings.ToLower(query)

		require.Contains(t, q, "from records")
		require.Contains(t, q, "sync_status")
		require.Contains(t, q, "base_version")
		require.Contains(t, q, "local_changes")
		require.Contains(t, q, "order by updated_at asc, id asc")

		// client side keeps squirrel's default ? placeholders
		require.Contains(t, query, "?")
		require.NotContains(t, query, "$1")

		require.Len(t, args, 1)
		require.Equal(t, 0, args[0], "tombstones are excluded by default")
	})

	t.Run("success: filters add IN clauses and watermark", func(t *testing.T) {
		since := time.Date(2026, 6, 10, 6, 30, 0, 0, time.UTC)

		query, args, err := buildListLocalRecordsQuery(models.RecordQuery{
			EntityTypes:    []models.EntityType{models.EntityObservation, models.EntitySample},
			EntityIDs:      []string{"obs-1", "obs-2"},
			Since:          &since,
			IncludeDeleted: true,
			PageSize:       50,
		})
		require.NoError(t, err)

		q := strings.ToLower(query)

		require.Contains(t, q, "entity_type in (?,?)")
		require.Contains(t, q, "entity_id in (?,?)")
		require.Contains(t, q, "updated_at > ?")
		require.Contains(t, q, "limit 50")

		whereIdx := strings.Index(q, "where")
		require.NotEqual(t, -1, whereIdx)
		require.NotContains(t, q[whereIdx:strings.Index(q, "order by")], "deleted")

		require.Len(t, args, 5)
		require.Equal(t, models.EntityObservation, args[0])
		require.Equal(t, models.EntitySample, args[1])
		require.Equal(t, "obs-1", args[2])
		require.Equal(t, "obs-2", args[3])
		require.Equal(t, since, args[4])
	})
}
