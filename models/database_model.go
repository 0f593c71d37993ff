package models

// Database represents a registered database connection.
// SQLAlchemyURI holds the connection string in dialect[+driver]://user:pass@host[:port]/db form.
type Database struct {
	ID            uint   `gorm:"primaryKey;column:id" json:"id"`
	DatabaseName  string `gorm:"column:database_name;uniqueIndex;size:250" json:"database_name" validate:"required"`
	SQLAlchemyURI string `gorm:"column:sqlalchemy_uri;size:1024" json:"sqlalchemy_uri" validate:"required"`
}

// TableName specifies the static table name for GORM.
func (Database) TableName() string {
	return "dbs"
}
