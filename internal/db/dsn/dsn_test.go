package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostNetwork/account/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name       string
		cfg        config.DB
		wantEngine string
		wantDSN    string
		wantErr    error
	}{
		{
			name:       "mysql host parts",
			cfg:        config.DB{Engine: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", Name: "ghost", Extras: "charset=utf8mb4"},
			wantEngine: EngineMySQL,
			wantDSN:    "u:p@tcp(db:3306)/ghost?charset=utf8mb4&parseTime=true",
		},
		{
			name:       "mysql keeps explicit parseTime",
			cfg:        config.DB{Engine: "mysql", Host: "db", User: "u", Password: "p", Extras: "parseTime=false"},
			wantEngine: EngineMySQL,
			wantDSN:    "u:p@tcp(db)/account?parseTime=false",
		},
		{
			name:       "postgres host parts with default name",
			cfg:        config.DB{Engine: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Extras: "sslmode=disable"},
			wantEngine: EnginePostgres,
			wantDSN:    "host=db user=u password=p dbname=account port=5432 sslmode=disable",
		},
		{
			name:       "postgres quotes special values",
			cfg:        config.DB{Engine: "postgres", Host: "db", User: "ghost admin", Password: `it's a \secret`},
			wantEngine: EnginePostgres,
			wantDSN:    `host=db user='ghost admin' password='it\'s a \\secret' dbname=account`,
		},
		{
			name:       "postgres quotes empty password",
			cfg:        config.DB{Engine: "postgres", Host: "db", User: "u"},
			wantEngine: EnginePostgres,
			wantDSN:    "host=db user=u password='' dbname=account",
		},
		{
			name:       "sqlite file name",
			cfg:        config.DB{Engine: "sqlite", Name: "ghost"},
			wantEngine: EngineSQLite,
			wantDSN:    "ghost.db",
		},
		{
			name:       "postgres url without database",
			cfg:        config.DB{URL: "postgres://u:p@db:5432"},
			wantEngine: EnginePostgres,
			wantDSN:    "postgres://u:p@db:5432/account",
		},
		{
			name:       "postgres url with database",
			cfg:        config.DB{URL: "postgresql://u:p@db/ghost?sslmode=disable", Name: "ignored"},
			wantEngine: EnginePostgres,
			wantDSN:    "postgresql://u:p@db/ghost?sslmode=disable",
		},
		{
			name:       "mysql url",
			cfg:        config.DB{URL: "mysql://u:p@db:3306/ghost"},
			wantEngine: EngineMySQL,
			wantDSN:    "u:p@tcp(db:3306)/ghost?parseTime=true",
		},
		{
			name:       "opaque dsn uses engine",
			cfg:        config.DB{URL: "u:p@tcp(db)/ghost", Engine: "mysql"},
			wantEngine: EngineMySQL,
			wantDSN:    "u:p@tcp(db)/ghost",
		},
		{
			name:    "unknown scheme",
			cfg:     config.DB{URL: "mongodb://db:27017/account"},
			wantErr: ErrUnsupportedEngine,
		},
		{
			name:    "unknown engine",
			cfg:     config.DB{Engine: "oracle", Host: "db"},
			wantErr: ErrUnsupportedEngine,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine, out, err := Create(tc.cfg)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantEngine, engine)
			assert.Equal(t, tc.wantDSN, out)
		})
	}
}

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DB{Engine: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(config.DB{URL: "postgres://u:p@db/ghost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}
