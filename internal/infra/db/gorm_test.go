package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ACTIVE行の一意性はこのDDLだけが担保している。
// 同時作成のget-or-create再検索はこの制約が前提になるので、形を固定する。
func TestPartialUniqueIndexes(t *testing.T) {
	assert.Equal(t, 2, len(partialUniqueIndexes))

	byTable := map[string]string{}
	for _, stmt := range partialUniqueIndexes {
		assert.Contains(t, stmt, "CREATE UNIQUE INDEX IF NOT EXISTS")
		//ordered=falseの行だけに効く部分インデックスであること
		assert.Contains(t, stmt, "WHERE NOT ordered")

		switch {
		case strings.Contains(stmt, "ON orders "):
			byTable["orders"] = stmt
		case strings.Contains(stmt, "ON order_items "):
			byTable["order_items"] = stmt
		}
	}

	assert.Contains(t, byTable["orders"], "(user_id)")
	assert.Contains(t, byTable["order_items"], "(user_id, item_id)")
}
