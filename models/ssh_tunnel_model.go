package models

// SSHTunnel holds the SSH tunnel parameters for exactly one Database.
// Optional columns are pointers so an unset value is stored as NULL.
type SSHTunnel struct {
	ID                 uint    `gorm:"primaryKey;column:id" json:"id"`
	DatabaseID         uint    `gorm:"column:database_id;uniqueIndex;not null" json:"database_id"` // Foreign key to Database (one-to-one)
	ServerAddress      string  `gorm:"column:server_address;size:256" json:"server_address"`
	ServerPort         *int    `gorm:"column:server_port" json:"server_port"`
	Username           string  `gorm:"column:username;size:256" json:"username"`
	Password           *string `gorm:"column:password" json:"-"`
	PrivateKey         *string `gorm:"column:private_key;type:text" json:"-"`
	PrivateKeyPassword *string `gorm:"column:private_key_password" json:"-"`
}

// TableName specifies the static table name for GORM.
func (SSHTunnel) TableName() string {
	return "ssh_tunnels"
}

// maskedValue replaces secret material in API responses.
const maskedValue = "XXXXXXXXXX"

// SSHTunnelView is the API representation of an SSHTunnel with secrets masked.
type SSHTunnelView struct {
	ID                 uint    `json:"id"`
	DatabaseID         uint    `json:"database_id"`
	ServerAddress      string  `json:"server_address"`
	ServerPort         *int    `json:"server_port"`
	Username           string  `json:"username,omitempty"`
	Password           *string `json:"password,omitempty"`
	PrivateKey         *string `json:"private_key,omitempty"`
	PrivateKeyPassword *string `json:"private_key_password,omitempty"`
}

// Masked returns a view of the tunnel safe to send to clients.
func (t SSHTunnel) Masked() SSHTunnelView {
	return SSHTunnelView{
		ID:                 t.ID,
		DatabaseID:         t.DatabaseID,
		ServerAddress:      t.ServerAddress,
		ServerPort:         t.ServerPort,
		Username:           t.Username,
		Password:           mask(t.Password),
		PrivateKey:         mask(t.PrivateKey),
		PrivateKeyPassword: mask(t.PrivateKeyPassword),
	}
}

func mask(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	m := maskedValue
	return &m
}
