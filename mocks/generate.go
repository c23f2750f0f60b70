package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-signal/internal/indicator Provider
//go:generate mockgen -destination=./mock_simulator.go -package=mocks github.com/rxtech-lab/argo-signal/internal/validator Simulator
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-signal/internal/datasource DataSource
