package storage

func NewTestStorage() (st *LevelDBBackend) {
	st = &LevelDBBackend{}
	if err := st.Init(&Config{Scheme: "memory"}); err != nil {
		panic(err)
	}

	return
}
