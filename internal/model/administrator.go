package model

type Administrator struct {
	AdministratorID    int64  `db:"administratorID" json:"administratorID"`
	AdministratorName  string `db:"administratorName" json:"administratorName"`
	AdministratorEmail string `db:"administratorEmail" json:"administratorEmail"`
	// Never serialized; the login handler strips it before responding.
	AdministratorPassword string `db:"administratorPassword" json:"-"`
}
