package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CompetitionProvider --dir ../usecase --output usecase --outpkg usecasemock --filename competition_provider_mock.go
