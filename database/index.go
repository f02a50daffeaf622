package database

import (
	"context"
	"fmt"
	"time"

	"github.com/siherrmann/linker/helper"
)

// ChangeSearchIndexType changes the trigram index used by SelectPeopleBySearch
// between GIN and GiST.
// indexType: "gin" or "gist"
// params: optional parameters for index creation
//   - For GiST: "siglen" (int, default 12)
func (h *PeopleDBHandler) ChangeSearchIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var createIndexSQL string

	switch indexType {
	case "gin":
		createIndexSQL = `CREATE INDEX idx_people_full_name_trgm ON people USING gin (full_name gin_trgm_ops);`

	case "gist":
		siglen := 12
		if siglenVal, ok := params["siglen"].(int); ok {
			siglen = siglenVal
		}

		createIndexSQL = fmt.Sprintf(
			`CREATE INDEX idx_people_full_name_trgm ON people USING gist (full_name gist_trgm_ops(siglen = %d));`,
			siglen,
		)

	default:
		return helper.NewError("change index type", fmt.Errorf("unsupported index type: %s (use 'gin' or 'gist')", indexType))
	}

	_, err := h.db.Instance.ExecContext(ctx, `DROP INDEX IF EXISTS idx_people_full_name_trgm;`)
	if err != nil {
		return helper.NewError("drop index", err)
	}

	h.db.Logger.Info("Dropped existing search index")

	_, err = h.db.Instance.ExecContext(ctx, createIndexSQL)
	if err != nil {
		return helper.NewError("create index", err)
	}

	h.db.Logger.Info(fmt.Sprintf("Created %s index with params: %v", indexType, params))

	return nil
}
