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

// Package logger is the central log repository for tasengine. Log entries are
// kept in a bounded list and identical consecutive entries are collapsed into
// a single entry with a repeat count.
//
// Logging is gated by the Permission interface. Packages that produce a lot of
// log noise under some conditions (the run manager during ultra fast-forward
// for example) implement Permission and pass themselves as the first argument
// to Log() and Logf(). The Allow value should be used when logging must always
// happen.
//
// The package level functions operate on a central logger instance. Separate
// instances can be created with NewLogger(), which is useful for testing.
package logger
