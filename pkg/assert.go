package pkg

import "askai"

func AssertNoError(err error) {
	if err != nil {
		askai.Logger.Error().Err(err).Msg("Error occurred that should not have occurred.")
		panic(err)
	}
}
