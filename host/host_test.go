// This file is part of tasengine.
//
// tasengine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tasengine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tasengine.  If not, see <https://www.gnu.org/licenses/>.

package host_test

import (
	"testing"

	"github.com/tasworks/tasengine/host"
	"github.com/tasworks/tasengine/test"
)

func TestClassification(t *testing.T) {
	test.ExpectFailure(t, host.IsLoading(host.Level))
	test.ExpectSuccess(t, host.IsLoading(host.LevelLoader))
	test.ExpectSuccess(t, host.IsLoading(host.GameLoader))
	test.ExpectFailure(t, host.IsLoading(host.Overworld))

	test.ExpectSuccess(t, host.InputSafe(host.Level))
	test.ExpectSuccess(t, host.InputSafe(host.LevelExit))
	test.ExpectFailure(t, host.InputSafe(host.Overworld))
	test.ExpectFailure(t, host.InputSafe(host.Other))

	test.ExpectEquality(t, host.LevelExitToLobby.String(), "level exit to lobby")
}
