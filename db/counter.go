package db

import "database/sql"

const submissionCounter = "submission_id"

// Counter is the durable submission id sequence.
type Counter struct {
	conn *sql.DB
}

// NewCounter wraps an opened database.
func NewCounter(conn *sql.DB) *Counter {
	return &Counter{conn: conn}
}

// Next 在事务中检索当前投稿 ID 并将其加一
func (c *Counter) Next() (int64, error) {
	tx, err := c.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var currentID int64
	err = tx.QueryRow("SELECT current_value FROM id_counter WHERE counter_name = ?", submissionCounter).Scan(&currentID)
	if err != nil {
		return 0, err
	}

	newID := currentID + 1
	_, err = tx.Exec("UPDATE id_counter SET current_value = ? WHERE counter_name = ?", newID, submissionCounter)
	if err != nil {
		return 0, err
	}

	return newID, tx.Commit()
}

// AtLeast 将计数器提升到不低于 id, 不会把它调低
func (c *Counter) AtLeast(id int64) error {
	_, err := c.conn.Exec("UPDATE id_counter SET current_value = MAX(current_value, ?) WHERE counter_name = ?", id, submissionCounter)
	return err
}
